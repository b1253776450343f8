package converter

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

// Result records the per-file facts the consumer aggregates. The batch
// itself keeps no running totals.
type Result struct {
	Path     string
	Success  bool
	Duration time.Duration
}

// convertFile runs one unit of work to completion: decode, resize, encode,
// persist. Failures never escape the unit; they come back as a failed
// Result. A panic inside a codec is converted the same way so one bad file
// cannot take down the pool.
func convertFile(path string, settings Settings, outputDir string, log *zap.Logger) (res Result) {
	start := time.Now()
	res = Result{Path: path}

	defer func() {
		res.Duration = time.Since(start)
		if r := recover(); r != nil {
			res.Success = false
			log.Error("panic during conversion",
				zap.String("file", path),
				zap.Any("panic", r))
		}
	}()

	if err := convert(path, settings, outputDir); err != nil {
		log.Warn("conversion failed", zap.String("file", path), zap.Error(err))
		return res
	}

	res.Success = true
	return res
}

func convert(path string, settings Settings, outputDir string) error {
	// The AVIF decoder is registered by the avif import in encode.go; JPEG
	// and PNG come with imaging.
	img, err := imaging.Open(path)
	if err != nil {
		return &DecodeError{Path: path, Err: err}
	}

	img = applyResize(img, settings.Resize)

	data, err := Encode(img, settings.Encoding)
	if err != nil {
		return err
	}

	outPath, err := outputPath(path, settings, outputDir)
	if err != nil {
		return err
	}

	// Two stems that collide after suffixing overwrite each other here; the
	// last writer wins and no error is reported.
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return &IOError{Path: outPath, Err: err}
	}

	return nil
}

// outputPath builds <stem><name extension><codec extension> inside outputDir.
func outputPath(srcPath string, settings Settings, outputDir string) (string, error) {
	base := filepath.Base(srcPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return "", &NamingError{Path: srcPath}
	}

	name := stem + settings.NameExtension + settings.Encoding.Ext()
	return filepath.Join(outputDir, name), nil
}
