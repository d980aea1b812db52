package subscription

import (
	"testing"

	"github.com/atomictrack/atomictrack/pkg/config"

	"github.com/stretchr/testify/assert"
)

func TestFounderDurationDays(t *testing.T) {
	s := &Service{cfg: &config.Config{}}
	assert.Equal(t, 90, s.founderDurationDays())

	s.cfg.Payment.FounderDurationDays = 30
	assert.Equal(t, 30, s.founderDurationDays())
}
