package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/JAOCruz/nayib/config"
	"github.com/JAOCruz/nayib/internal/catalog"
)

func main() {
	catalogPath := flag.String("catalog", "data/properties.json", "catalog document to audit, a file path or an http(s) URL")
	cdnPath := flag.String("cdn", "config/cdn.yaml", "CDN image table to audit, empty to skip")
	timeout := flag.Duration("timeout", 10*time.Second, "deadline for fetching a remote catalog")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	problems := 0

	var source catalog.Source = catalog.FileSource{Path: *catalogPath}
	if strings.HasPrefix(*catalogPath, "http://") || strings.HasPrefix(*catalogPath, "https://") {
		source = catalog.HTTPSource{URL: *catalogPath}
	}

	doc, err := catalog.NewLoader([]catalog.Source{source}, *timeout, logger).Load(context.Background())
	if err != nil {
		logger.WithError(err).Error("Failed to load catalog")
		problems++
	}
	for _, finding := range catalog.Audit(doc) {
		logger.WithFields(logrus.Fields{
			"kind":     finding.Kind,
			"category": finding.Category,
			"subject":  finding.Subject,
		}).Warn(finding.Message)
		if finding.Kind != catalog.FindingMissingCategory {
			problems++
		}
	}

	if *cdnPath != "" {
		problems += auditCDN(*cdnPath, logger)
	}

	if problems > 0 {
		logger.WithField("problems", problems).Error("Catalog audit failed")
		os.Exit(1)
	}
	logger.Info("Catalog audit passed")
}

func auditCDN(path string, logger *logrus.Logger) int {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.WithField("path", path).Warn("CDN configuration not found, skipping")
			return 0
		}
		logger.WithError(err).Error("Failed to read CDN configuration")
		return 1
	}

	duplicates, err := config.FindDuplicateKeys(data)
	if err != nil {
		logger.WithError(err).Error("Failed to parse CDN configuration")
		return 1
	}
	for _, d := range duplicates {
		logger.WithFields(logrus.Fields{
			"key":        d.Key,
			"line":       d.Line,
			"first_line": d.FirstLine,
		}).Warn("Duplicate CDN property number")
	}
	if len(duplicates) > 0 {
		return len(duplicates)
	}

	if _, err := config.ParseCDNConfig(data); err != nil {
		logger.WithError(err).Error("Invalid CDN configuration")
		return 1
	}
	return 0
}
