// Package catalog resolves star catalog entries into generation inputs.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"starforge/internal/stellar"
)

var ErrNotFound = errors.New("catalog entry not found")

// Row is one star catalog entry with its cross-reference identifiers.
type Row struct {
	Index         int             `json:"index" yaml:"index"`
	HygID         int             `json:"hyg_id,omitempty" yaml:"hyg_id,omitempty"`
	HipID         int             `json:"hip_id,omitempty" yaml:"hip_id,omitempty"`
	HDID          int             `json:"hd_id,omitempty" yaml:"hd_id,omitempty"`
	HRID          int             `json:"hr_id,omitempty" yaml:"hr_id,omitempty"`
	Gliese        string          `json:"gliese,omitempty" yaml:"gliese,omitempty"`
	ProperName    string          `json:"proper_name,omitempty" yaml:"proper_name,omitempty"`
	Constellation string          `json:"constellation,omitempty" yaml:"constellation,omitempty"`
	SpectralType  string          `json:"spectral_type" yaml:"spectral_type"`
	Luminosity    float64         `json:"luminosity" yaml:"luminosity"`
	Presets       stellar.Presets `json:"presets" yaml:"presets,omitempty"`
}

func (r Row) Validate() error {
	if r.Index < 0 {
		return fmt.Errorf("catalog index %d is negative", r.Index)
	}
	if strings.TrimSpace(r.SpectralType) == "" {
		return fmt.Errorf("catalog entry %d has no spectral type", r.Index)
	}
	if !(r.Luminosity > 0) || math.IsInf(r.Luminosity, 0) {
		return fmt.Errorf("catalog entry %d has luminosity %v", r.Index, r.Luminosity)
	}
	return nil
}

// Name is the best display name for the entry.
func (r Row) Name() string {
	switch {
	case r.ProperName != "":
		return r.ProperName
	case r.Gliese != "":
		return r.Gliese
	case r.HipID != 0:
		return fmt.Sprintf("HIP %d", r.HipID)
	case r.HDID != 0:
		return fmt.Sprintf("HD %d", r.HDID)
	default:
		return fmt.Sprintf("Catalog %d", r.Index)
	}
}

// Source looks up catalog entries by index. Implementations return an error
// wrapping ErrNotFound for unknown indices.
type Source interface {
	LookupByIndex(ctx context.Context, index int) (Row, error)
}
