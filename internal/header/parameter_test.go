package header_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hambosto/sweetbyte-rs/internal/header"
	"github.com/hambosto/sweetbyte-rs/internal/params"
)

func TestParametersMarshalRoundTrip(t *testing.T) {
	p := header.DefaultParameters(params.DefaultKDF())
	buf := p.Marshal()
	assert.Len(t, buf, header.ParameterBlockSize)

	got, err := header.UnmarshalParameters(buf)
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.NoError(t, got.Validate())
}

func TestValidateRejectsWrongVersion(t *testing.T) {
	p := header.DefaultParameters(params.DefaultKDF())
	p.Version = 0x0001
	assert.Error(t, p.Validate())
}

func TestValidateRejectsPartialAlgorithmMask(t *testing.T) {
	p := header.DefaultParameters(params.DefaultKDF())
	p.Algorithm = params.AlgorithmAES256GCM
	assert.Error(t, p.Validate())
}

func TestUnmarshalParametersRejectsWrongSize(t *testing.T) {
	_, err := header.UnmarshalParameters(make([]byte, 3))
	assert.Error(t, err)
}
