// Package types defines the closed enumerations shared across all layers.
// This package contains NO business logic - only type definitions and parsing.
package types

import (
	"strings"

	"studio-quote/internal/errors"
)

// ServiceType selects which rate table applies
type ServiceType string

const (
	ServiceMixing    ServiceType = "mixing"
	ServiceMastering ServiceType = "mastering"
	ServiceBundle    ServiceType = "bundle"
)

// ServiceTypes lists every service in display order
var ServiceTypes = []ServiceType{ServiceMixing, ServiceMastering, ServiceBundle}

// String returns the wire name
func (s ServiceType) String() string {
	return string(s)
}

// IsValid checks if the service is a known service
func (s ServiceType) IsValid() bool {
	switch s {
	case ServiceMixing, ServiceMastering, ServiceBundle:
		return true
	default:
		return false
	}
}

// DisplayName returns the label shown on the service selector
func (s ServiceType) DisplayName() string {
	switch s {
	case ServiceMixing:
		return "Mixing Only"
	case ServiceMastering:
		return "Mastering Only"
	case ServiceBundle:
		return "Mix + Master Bundle"
	default:
		return string(s)
	}
}

// ParseServiceType parses a wire name, case-insensitively
func ParseServiceType(s string) (ServiceType, error) {
	for _, st := range ServiceTypes {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", errors.Inputf("unknown service type %q", s)
}

// ProjectSize is a tier key within a rate table
type ProjectSize string

const (
	SizeSingle        ProjectSize = "single"
	SizeEP            ProjectSize = "ep"
	SizeAlbum         ProjectSize = "album"
	SizeEPAlbum       ProjectSize = "epAlbum"
	SizeStemMastering ProjectSize = "stemMastering"
)

// ProjectSizes lists every known size key
var ProjectSizes = []ProjectSize{SizeSingle, SizeEP, SizeAlbum, SizeEPAlbum, SizeStemMastering}

// String returns the wire name
func (p ProjectSize) String() string {
	return string(p)
}

// IsValid checks if the size is a known size key
func (p ProjectSize) IsValid() bool {
	switch p {
	case SizeSingle, SizeEP, SizeAlbum, SizeEPAlbum, SizeStemMastering:
		return true
	default:
		return false
	}
}

// ParseProjectSize parses a wire name, case-insensitively
func ParseProjectSize(s string) (ProjectSize, error) {
	for _, ps := range ProjectSizes {
		if strings.EqualFold(s, string(ps)) {
			return ps, nil
		}
	}
	return "", errors.Inputf("unknown project size %q", s)
}

// AddOnKey identifies an optional extra
type AddOnKey string

const (
	AddOnInstrumental AddOnKey = "instrumental"
	AddOnTVTrack      AddOnKey = "tvTrack"
	AddOnRush24       AddOnKey = "rush24"
	AddOnRush48       AddOnKey = "rush48"
	AddOnStems        AddOnKey = "stems"
	AddOnDDP          AddOnKey = "ddp"
)

// AddOnKeys lists every add-on in display order
var AddOnKeys = []AddOnKey{AddOnInstrumental, AddOnTVTrack, AddOnRush24, AddOnRush48, AddOnStems, AddOnDDP}

// String returns the wire name
func (a AddOnKey) String() string {
	return string(a)
}

// IsValid checks if the key is a known add-on
func (a AddOnKey) IsValid() bool {
	switch a {
	case AddOnInstrumental, AddOnTVTrack, AddOnRush24, AddOnRush48, AddOnStems, AddOnDDP:
		return true
	default:
		return false
	}
}

// ParseAddOnKey parses a wire name, case-insensitively
func ParseAddOnKey(s string) (AddOnKey, error) {
	for _, k := range AddOnKeys {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	return "", errors.Inputf("unknown add-on %q", s)
}

// Page is a step of the host page flow
type Page string

const (
	PageHome    Page = "home"
	PagePricing Page = "pricing"
	PageUpload  Page = "upload"
	PageOptions Page = "options"
	PagePayment Page = "payment"
)

// Pages lists every page of the flow
var Pages = []Page{PageHome, PagePricing, PageUpload, PageOptions, PagePayment}

// String returns the page identifier
func (p Page) String() string {
	return string(p)
}

// IsValid checks if the page belongs to the flow
func (p Page) IsValid() bool {
	switch p {
	case PageHome, PagePricing, PageUpload, PageOptions, PagePayment:
		return true
	default:
		return false
	}
}
