package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    string
	}{
		{name: "release build", version: "v1.2.0", want: "foresight version v1.2.0\n"},
		{name: "dev build", version: "dev", want: "foresight version dev\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := version
			version = tt.version
			t.Cleanup(func() { version = original })

			// No services: version must not need the pipeline.
			stdout, _, err := runCLI(t, nil, "version")

			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}
