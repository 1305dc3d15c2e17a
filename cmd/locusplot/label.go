package main

import (
	"image/png"
	"log"
	"os"
	"strings"

	"github.com/fogleman/gg"
)

// stampTitle writes a title onto the top-left of a rendered PNG. SVG output
// is left untouched; so is PNG when no usable font file is available.
func stampTitle(outputPath, title, fontPath string) error {
	if !strings.HasSuffix(strings.ToLower(outputPath), ".png") {
		return nil
	}
	if fontPath == "" {
		log.Println("No font_path configured; skipping title stamp")
		return nil
	}

	f, err := os.Open(outputPath)
	if err != nil {
		return err
	}

	img, err := png.Decode(f)
	f.Close()
	if err != nil {
		return err
	}

	ctx := gg.NewContextForImage(img)
	ctx.SetRGB(0, 0, 0)

	if err := ctx.LoadFontFace(fontPath, 14); err != nil {
		log.Println("Could not load", fontPath, "- skipping title stamp:", err)
		return nil
	}

	ctx.DrawString(title, 6, 18)

	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	return png.Encode(out, ctx.Image())
}
