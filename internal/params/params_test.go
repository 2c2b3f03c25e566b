package params_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hambosto/sweetbyte-rs/internal/params"
)

func TestDefaultValidates(t *testing.T) {
	assert.NoError(t, params.Default().Validate())
}

func TestWithFastKDFValidates(t *testing.T) {
	assert.NoError(t, params.Default().WithFastKDF().Validate())
}

func TestValidateRejectsBadShardLayout(t *testing.T) {
	p := params.Default()
	p.DataShards = 3
	assert.Error(t, p.Validate())
}

func TestValidateRejectsZeroChunkSize(t *testing.T) {
	p := params.Default()
	p.ChunkSize = 0
	assert.Error(t, p.Validate())
}

func TestValidateRejectsZeroKDFCost(t *testing.T) {
	p := params.Default()
	p.KDF.Time = 0
	assert.Error(t, p.Validate())
}
