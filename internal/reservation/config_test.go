package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 32, cfg.MaxUDP)
	assert.Equal(t, 32, cfg.MaxTCP)
	assert.Equal(t, 8, cfg.MaxPermanentTCP)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "valid config", cfg: Config{MaxUDP: 1, MaxTCP: 1, MaxPermanentTCP: 1}},
		{name: "all zero is valid", cfg: Config{}},
		{name: "negative MaxUDP", cfg: Config{MaxUDP: -1, MaxTCP: 1, MaxPermanentTCP: 1}, wantErr: true},
		{name: "negative MaxTCP", cfg: Config{MaxUDP: 1, MaxTCP: -1, MaxPermanentTCP: 1}, wantErr: true},
		{name: "negative MaxPermanentTCP", cfg: Config{MaxUDP: 1, MaxTCP: 1, MaxPermanentTCP: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateCombinesAllViolations(t *testing.T) {
	cfg := Config{MaxUDP: -1, MaxTCP: -1, MaxPermanentTCP: -1}
	err := cfg.Validate()
	require := assert.New(t)
	require.Error(err)
	require.Contains(err.Error(), "MaxUDP")
	require.Contains(err.Error(), "MaxTCP")
	require.Contains(err.Error(), "MaxPermanentTCP")
}

func TestConfig_WithSetters(t *testing.T) {
	cfg := DefaultConfig()

	withUDP := cfg.WithMaxUDP(10)
	assert.Equal(t, 10, withUDP.MaxUDP)
	assert.Equal(t, cfg.MaxTCP, withUDP.MaxTCP)

	withTCP := cfg.WithMaxTCP(20)
	assert.Equal(t, 20, withTCP.MaxTCP)

	withPermanent := cfg.WithMaxPermanentTCP(5)
	assert.Equal(t, 5, withPermanent.MaxPermanentTCP)

	hook := func() {}
	withClient := cfg.WithChannelClient(ChannelClientConfig{OnShutdown: hook})
	assert.NotNil(t, withClient.ChannelClient.OnShutdown)
}
