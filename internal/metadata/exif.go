// Package metadata inspects source images for identifying EXIF fields, so
// users can see what a conversion will drop while keep-exif is not wired
// into the encoders.
package metadata

import (
	"io"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"
)

// Report summarises the identifying metadata found in one image.
type Report struct {
	HasGPS       bool
	HasModel     bool
	HasTimestamp bool
	TagCount     int
}

// Categories lists the report's findings as display labels.
func (r Report) Categories() []string {
	cats := []string{}
	if r.HasGPS {
		cats = append(cats, "GPS")
	}
	if r.HasModel {
		cats = append(cats, "Device Model")
	}
	if r.HasTimestamp {
		cats = append(cats, "Timestamp")
	}
	return cats
}

// Analyze scans rs for EXIF tags. A file without EXIF data yields an empty
// report, not an error.
func Analyze(rs io.ReadSeeker) (Report, error) {
	report := Report{}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return report, err
	}

	tags, _, err := exif.GetFlatExifDataUniversalSearchWithReadSeeker(rs, nil, true)
	if err != nil {
		if isNoExif(err) {
			return report, nil
		}
		return report, err
	}

	report.TagCount = len(tags)
	for _, tag := range tags {
		name := tag.TagName

		if strings.HasPrefix(name, "GPS") || strings.Contains(tag.IfdPath, "GPS") {
			report.HasGPS = true
		}
		if name == "Model" || name == "CameraModelName" {
			report.HasModel = true
		}
		if name == "DateTimeOriginal" || name == "DateTimeDigitized" || name == "DateTime" {
			report.HasTimestamp = true
		}
	}

	return report, nil
}

func isNoExif(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "no exif")
}
