package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	"github.com/jvlmdr/go-cv/imsamp"
	"github.com/jvlmdr/poly-feat/polyimage"
	"github.com/nfnt/resize"
)

func init() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage:", os.Args[0], "[flags] image.(png|jpg) descr.(gob|json|csv)")
		flag.PrintDefaults()
	}
}

func main() {
	var (
		order      = flag.Int("order", 3, "Order of the fitted polynomial (1 to 6).")
		window     = flag.Int("window", 13, "Side of the fitting window in pixels (odd, at least 3).")
		downsample = flag.Int("downsample", 1, "Extract a descriptor every this many pixels.")
		width      = flag.Int("width", 0, "Resize the image to this width before extraction (0 for no resize).")
		rect       = flag.String("rect", "", "Crop rectangle x0,y0,x1,y1 before extraction.")
		stateFile  = flag.String("state", "", "Also write the full extractor state to this file.")
	)
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	var (
		imFile  = flag.Arg(0)
		outFile = flag.Arg(1)
	)

	im, err := loadImage(imFile)
	if err != nil {
		log.Fatalln("load image:", err)
	}
	if *rect != "" {
		r, err := parseRect(*rect)
		if err != nil {
			log.Fatalln("parse rect:", err)
		}
		im = imsamp.Rect(im, r, imsamp.Continue)
	}
	if *width > 0 {
		im = resize.Resize(uint(*width), 0, im, resize.Bilinear)
	}

	f, err := polyimage.ToGray(im)
	if err != nil {
		log.Fatalln("convert to gray:", err)
	}
	phi := polyimage.New(*downsample)
	if err := phi.Setup(*order, *window); err != nil {
		log.Fatalln("setup:", err)
	}
	log.Printf("extract %dx%d image", f.Width, f.Height)
	phi.Load(f)
	if phi.Size() == 0 {
		log.Fatalf("image smaller than %dx%d window", *window, *window)
	}
	log.Printf("%dx%d descriptors of dimension %d", phi.Nr(), phi.Nc(), phi.NumDimensions())

	if err := saveGridExt(outFile, phi.Grid()); err != nil {
		log.Fatalln("save descriptors:", err)
	}
	if *stateFile != "" {
		if err := saveState(*stateFile, phi); err != nil {
			log.Fatalln("save state:", err)
		}
	}
}

func loadImage(name string) (image.Image, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	im, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	return im, nil
}

func parseRect(s string) (image.Rectangle, error) {
	var x0, y0, x1, y1 int
	if _, err := fmt.Sscanf(s, "%d,%d,%d,%d", &x0, &y0, &x1, &y1); err != nil {
		return image.Rectangle{}, err
	}
	r := image.Rect(x0, y0, x1, y1)
	if r.Empty() {
		return image.Rectangle{}, fmt.Errorf("empty rectangle: %s", s)
	}
	return r, nil
}

func saveState(fname string, phi *polyimage.PolyImage) error {
	file, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer file.Close()
	return phi.Serialize(file)
}
