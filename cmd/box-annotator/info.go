package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/menta2k/box-annotator/pkg/loader"
	"github.com/menta2k/box-annotator/pkg/mapper"
)

func newInfoCmd(root *rootOptions) *cobra.Command {
	var image string
	var width, height int
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show the natural size of an image and check a surface size against it",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			img, err := loadImage(ctx, image)
			if err != nil {
				return err
			}
			info := loader.Info(img)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "image:  %s\n", image)
			fmt.Fprintf(out, "size:   %dx%d\n", info.Width, info.Height)
			fmt.Fprintf(out, "aspect: %.4f\n", info.AspectRatio)

			if width == 0 && height == 0 {
				return nil
			}
			surface := mapper.Size{Width: width, Height: height}
			m, err := mapper.New(surface, mapper.Size{Width: info.Width, Height: info.Height})
			if err != nil {
				root.logger().Debug("surface rejected", "error", err)
				return err
			}
			sx, sy := m.Scale()
			fmt.Fprintf(out, "surface %s ok, scale %.4f x %.4f\n", surface, sx, sy)
			return nil
		},
	}
	cmd.Flags().StringVarP(&image, "image", "i", "", "input image path or URL")
	cmd.Flags().IntVar(&width, "width", 0, "surface width to check")
	cmd.Flags().IntVar(&height, "height", 0, "surface height to check")
	_ = cmd.MarkFlagRequired("image")
	return cmd
}
