/*
Copyright © 2025 the FieldView authors.
This file is part of FieldView.

FieldView is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

FieldView is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with FieldView.  If not, see <http://www.gnu.org/licenses/>.
*/

package fieldviewutil

import (
	"fmt"
	"image/png"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spatialmodel/fieldview"
)

var logger = logrus.StandardLogger()

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableSorting:  true,
	})
	Root.AddCommand(renderCmd)
	renderCmd.Flags().StringVar(&configPath, "config", "fieldview.toml",
		"path to the render job configuration file")
}

// Root is the main command of the fieldview CLI.
var Root = &cobra.Command{
	Use:   "fieldview",
	Short: "fieldview renders scalar fields from sparse 2D samples",
	Long: `fieldview interpolates a continuous scalar field from sparse,
irregularly placed samples using locally fitted thin-plate splines,
clips it to a boundary shape, and writes the colored result as a PNG.`,
	SilenceUsage: true,
}

var configPath string

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "render computes one settled full-resolution pass and writes a PNG",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := ReadConfig(configPath)
		if err != nil {
			return err
		}
		return Render(cfg)
	},
}

// Render runs one full-resolution pass for cfg and writes the raster to
// cfg.Output.
func Render(cfg *RenderConfig) error {
	positions, values, err := ReadPoints(cfg.Points)
	if err != nil {
		return err
	}
	boundary, err := cfg.MakeBoundary()
	if err != nil {
		return err
	}
	params, err := cfg.Params()
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"points":   len(positions),
		"grid":     fmt.Sprintf("%d×%d", params.GridNx, params.GridNy),
		"colormap": params.Colormap,
	}).Info("rendering field")

	e := fieldview.New()
	defer e.Close()
	if err := e.SetParameters(params); err != nil {
		return err
	}

	done := make(chan *fieldview.RenderRaster, 1)
	errc := make(chan error, 1)
	e.OnRaster(func(r *fieldview.RenderRaster) {
		if r.Resolution == fieldview.HighResolution {
			select {
			case done <- r:
			default:
			}
		}
	})
	e.OnError(func(err error) {
		select {
		case errc <- err:
		default:
		}
	})

	if boundary != nil {
		e.SetBoundary(boundary)
	}
	if err := e.SetPoints(positions, values); err != nil {
		return err
	}

	var raster *fieldview.RenderRaster
	select {
	case raster = <-done:
	case err := <-errc:
		return err
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("fieldviewutil: render timed out")
	}

	f, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("fieldviewutil: while creating output file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, raster.Image); err != nil {
		return fmt.Errorf("fieldviewutil: while encoding %s: %v", cfg.Output, err)
	}
	logger.WithField("output", cfg.Output).Info("render complete")
	return nil
}
