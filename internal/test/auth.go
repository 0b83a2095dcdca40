package test

import (
	"errors"
	"strings"

	pkgAuth "github.com/polkiloo/cleanorder/internal/pkg/auth"
)

// SealerStub wraps tokens in a readable envelope for tests.
type SealerStub struct {
	SealErr error
	OpenErr error
}

// Seal returns "sealed:<token>".
func (s SealerStub) Seal(token string) (string, error) {
	if s.SealErr != nil {
		return "", s.SealErr
	}
	return "sealed:" + token, nil
}

// Open reverses Seal.
func (s SealerStub) Open(sealed string) (string, error) {
	if s.OpenErr != nil {
		return "", s.OpenErr
	}
	token, ok := strings.CutPrefix(sealed, "sealed:")
	if !ok {
		return "", errors.New("not sealed")
	}
	return token, nil
}

// Name returns the sealer identifier used in tests.
func (SealerStub) Name() string {
	return "stub"
}

var _ pkgAuth.Sealer = SealerStub{}
