package pathutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hambosto/sweetbyte-rs/internal/pathutil"
)

func TestDefaultEncryptedPath(t *testing.T) {
	assert.Equal(t, "report.pdf.swx", pathutil.DefaultEncryptedPath("report.pdf"))
}

func TestDefaultDecryptedPathStripsSuffix(t *testing.T) {
	assert.Equal(t, "report.pdf", pathutil.DefaultDecryptedPath("report.pdf.swx"))
}

func TestDefaultDecryptedPathWithoutSuffix(t *testing.T) {
	assert.Equal(t, "report.pdf.out", pathutil.DefaultDecryptedPath("report.pdf"))
}
