package gonumplot

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tabchart/internal/errors"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Save renders the plot to path. Raster formats honour the factory's dpi;
// svg and pdf are written by gonum/plot's vector backends.
func (s *Surface) Save(path string) error {
	start := time.Now()
	w := vg.Length(s.spec.Width) * vg.Inch
	h := vg.Length(s.spec.Height) * vg.Inch

	wt, err := s.writerTo(strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")), w, h)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.IOError("failed to create "+path, err)
	}
	if _, err := wt.WriteTo(f); err != nil {
		f.Close()
		return errors.IOError("failed to write "+path, err)
	}
	if err := f.Close(); err != nil {
		return errors.IOError("failed to close "+path, err)
	}

	log.Printf("[gonumplot] Saved %s in %.2fms", path, float64(time.Since(start).Nanoseconds())/1e6)
	return nil
}

func (s *Surface) writerTo(format string, w, h vg.Length) (io.WriterTo, error) {
	switch format {
	case "png", "jpg", "jpeg", "tif", "tiff":
		c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(s.dpi))
		s.plot.Draw(draw.New(c))
		switch format {
		case "png":
			return vgimg.PngCanvas{Canvas: c}, nil
		case "jpg", "jpeg":
			return vgimg.JpegCanvas{Canvas: c}, nil
		default:
			return vgimg.TiffCanvas{Canvas: c}, nil
		}
	}

	wt, err := s.plot.WriterTo(w, h, format)
	if err != nil {
		return nil, errors.RenderError(fmt.Sprintf("unsupported image format %q", format), err)
	}
	return wt, nil
}
