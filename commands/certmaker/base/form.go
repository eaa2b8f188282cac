package base

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aacfactory/certmaker"
)

const (
	MinKeyBits      = 1024
	MaxKeyBits      = 4096
	MinValidityDays = 1
	MaxValidityDays = 3650
)

// Form is the input of the generate command after the profile and flags are merged.
type Form struct {
	CommonName   string
	KeyBits      int
	ValidityDays int
	OutputDir    string
	DER          bool
}

// Validate reports every invalid field at once.
func (f Form) Validate() error {
	errs := make([]error, 0, 4)
	if strings.TrimSpace(f.CommonName) == "" {
		errs = append(errs, errors.New("Common Name is required"))
	}
	if f.KeyBits < MinKeyBits || f.KeyBits > MaxKeyBits {
		errs = append(errs, fmt.Errorf("Key Size must be between %d and %d, got %d", MinKeyBits, MaxKeyBits, f.KeyBits))
	}
	if f.ValidityDays < MinValidityDays || f.ValidityDays > MaxValidityDays {
		errs = append(errs, fmt.Errorf("Validity must be between %d and %d days, got %d", MinValidityDays, MaxValidityDays, f.ValidityDays))
	}
	if strings.TrimSpace(f.OutputDir) == "" {
		errs = append(errs, errors.New("Output location is required"))
	} else if dirErr := checkOutputDir(f.OutputDir); dirErr != nil {
		errs = append(errs, dirErr)
	}
	return certmaker.ValidationError(errs...)
}

func checkOutputDir(dir string) error {
	stat, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("Output location %s does not exist", dir)
		}
		return fmt.Errorf("Output location %s is not accessible, %v", dir, err)
	}
	if !stat.IsDir() {
		return fmt.Errorf("Output location %s is not a directory", dir)
	}
	return checkWritable(dir)
}

func (f Form) Request() certmaker.Request {
	return certmaker.Request{
		CommonName:   f.CommonName,
		KeyBits:      f.KeyBits,
		ValidityDays: f.ValidityDays,
		OutputDir:    f.OutputDir,
		DER:          f.DER,
	}
}
