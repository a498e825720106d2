package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrDuplicateKey is returned when a property number appears twice.
	ErrDuplicateKey = errors.New("duplicate property key")

	// ErrInvalidProperty is returned for malformed property entries.
	ErrInvalidProperty = errors.New("invalid property entry")
)

// CDNProperty describes the images of one numbered property.
type CDNProperty struct {
	Name       string `yaml:"name" json:"name"`
	ImageCount int    `yaml:"imageCount" json:"image_count"`
	CDNBase    string `yaml:"cdnBase" json:"cdn_base"`
}

// CDNConfig is the image table of the CDN bucket.
type CDNConfig struct {
	BaseURL          string                 `yaml:"baseUrl"`
	PropertiesFolder string                 `yaml:"propertiesFolder"`
	Properties       map[string]CDNProperty `yaml:"properties"`
}

// DuplicateKey locates a repeated property number.
type DuplicateKey struct {
	Key       string
	Line      int
	FirstLine int
}

// LoadCDNConfig loads the CDN image table from a YAML file.
func LoadCDNConfig(path string) (*CDNConfig, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseCDNConfig(data)
}

// ParseCDNConfig decodes and validates a CDN image table. A property number
// listed twice fails with ErrDuplicateKey instead of overwriting the first.
func ParseCDNConfig(data []byte) (*CDNConfig, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	duplicates := duplicateKeys(&root)
	if len(duplicates) > 0 {
		d := duplicates[0]
		return nil, fmt.Errorf("%w: %q at line %d, first defined at line %d", ErrDuplicateKey, d.Key, d.Line, d.FirstLine)
	}

	var cfg CDNConfig
	if err := root.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FindDuplicateKeys lists every repeated property number of a CDN table.
func FindDuplicateKeys(data []byte) ([]DuplicateKey, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return duplicateKeys(&root), nil
}

func duplicateKeys(root *yaml.Node) []DuplicateKey {
	properties := mappingValue(root, "properties")
	if properties == nil || properties.Kind != yaml.MappingNode {
		return nil
	}

	var duplicates []DuplicateKey
	seen := make(map[string]int)
	for i := 0; i+1 < len(properties.Content); i += 2 {
		key := properties.Content[i]
		name := strings.TrimSpace(key.Value)
		if first, ok := seen[name]; ok {
			duplicates = append(duplicates, DuplicateKey{Key: name, Line: key.Line, FirstLine: first})
			continue
		}
		seen[name] = key.Line
	}
	return duplicates
}

// mappingValue returns the value node stored under key in the document's
// top-level mapping.
func mappingValue(root *yaml.Node, key string) *yaml.Node {
	node := root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// Validate checks every property entry.
func (c *CDNConfig) Validate() error {
	for key, property := range c.Properties {
		number, err := strconv.Atoi(key)
		if err != nil || number < 1 {
			return fmt.Errorf("%w: key %q is not a property number", ErrInvalidProperty, key)
		}
		if property.ImageCount < 0 {
			return fmt.Errorf("%w: property %s has a negative image count", ErrInvalidProperty, key)
		}
		if property.CDNBase == "" && c.BaseURL == "" {
			return fmt.Errorf("%w: property %s has no cdnBase and no baseUrl is set", ErrInvalidProperty, key)
		}
	}
	return nil
}

// Numbers returns the configured property numbers in ascending order.
func (c *CDNConfig) Numbers() []string {
	if c == nil {
		return nil
	}
	numbers := make([]string, 0, len(c.Properties))
	for key := range c.Properties {
		numbers = append(numbers, key)
	}
	sort.Slice(numbers, func(i, j int) bool {
		a, _ := strconv.Atoi(numbers[i])
		b, _ := strconv.Atoi(numbers[j])
		return a < b
	})
	return numbers
}

// Property returns the entry of a property number.
func (c *CDNConfig) Property(number string) (CDNProperty, bool) {
	if c == nil {
		return CDNProperty{}, false
	}
	property, ok := c.Properties[strings.TrimSpace(number)]
	return property, ok
}

// Base returns the image base URL of a property, derived from the bucket
// layout when the entry has none.
func (c *CDNConfig) Base(number string) (string, bool) {
	property, ok := c.Property(number)
	if !ok {
		return "", false
	}
	if property.CDNBase != "" {
		return strings.TrimSuffix(property.CDNBase, "/"), true
	}

	folder := c.PropertiesFolder
	if folder == "" {
		folder = "Propiedades"
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(c.BaseURL, "/"), folder, strings.TrimSpace(number)), true
}

// ImageURLs lists {cdnBase}/{n}.png for n in [1, imageCount].
func (c *CDNConfig) ImageURLs(number string) ([]string, bool) {
	base, ok := c.Base(number)
	if !ok {
		return nil, false
	}

	property, _ := c.Property(number)
	urls := make([]string, 0, property.ImageCount)
	for i := 1; i <= property.ImageCount; i++ {
		urls = append(urls, fmt.Sprintf("%s/%d.png", base, i))
	}
	return urls, true
}

// MainImageURL returns the first image of a property.
func (c *CDNConfig) MainImageURL(number string) (string, bool) {
	base, ok := c.Base(number)
	if !ok {
		return "", false
	}
	return base + "/1.png", true
}
