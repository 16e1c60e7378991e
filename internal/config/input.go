package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rgehrsitz/rmgo/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of profile and rules files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a profile from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Profile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseProfile(data)
}

// ParseProfile decodes and validates a profile document
func (ip *InputParser) ParseProfile(data []byte) (*domain.Profile, error) {
	var profile domain.Profile
	if err := decodeStrict(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := domain.ValidateProfile(profile); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}

	return &profile, nil
}

// LoadRules overlays a YAML rules file on the MY-2024 rules and validates the result.
// Keys missing from the file keep their MY-2024 values; lists such as tax brackets
// are replaced whole.
func (ip *InputParser) LoadRules(filename string) (domain.Rules, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.Rules{}, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseRules(data)
}

// ParseRules overlays a rules document on the MY-2024 rules
func (ip *InputParser) ParseRules(data []byte) (domain.Rules, error) {
	rules := domain.MY2024Rules()
	if err := decodeStrict(data, &rules); err != nil {
		return domain.Rules{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := rules.Validate(); err != nil {
		return domain.Rules{}, fmt.Errorf("rules validation failed: %w", err)
	}

	return rules, nil
}

// MarshalProfile renders a profile as YAML
func (ip *InputParser) MarshalProfile(p domain.Profile) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeStrict rejects unknown keys so typos surface instead of silently using defaults
func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
