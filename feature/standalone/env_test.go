package standalone

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildEnv(t *testing.T) {
	sep := string(os.PathListSeparator)
	base := []string{"HOME=/home/u", "DEPLOY_MODE=CLUSTER", "LD_LIBRARY_PATH=/usr/lib", "DYLD_LIBRARY_PATH="}

	tests := []struct {
		name    string
		goos    string
		key     string
		want    string
		present bool
	}{
		{"linux prepends", "linux", "LD_LIBRARY_PATH", "/opt/bin" + sep + "/usr/lib", true},
		{"darwin empty value", "darwin", "DYLD_LIBRARY_PATH", "/opt/bin", true},
		{"windows untouched", "windows", "LD_LIBRARY_PATH", "/usr/lib", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := buildEnv(base, tt.goos, "/opt/bin")

			got, ok := lookupEnv(env, tt.key)
			assert.Equal(t, tt.present, ok)
			assert.Equal(t, tt.want, got)

			mode, _ := lookupEnv(env, "DEPLOY_MODE")
			assert.Equal(t, "STANDALONE", mode)
			home, _ := lookupEnv(env, "HOME")
			assert.Equal(t, "/home/u", home)
		})
	}
}

func TestSetEnv_ReplacesDuplicates(t *testing.T) {
	env := setEnv([]string{"A=1", "B=2", "A=3"}, "A", "9")
	assert.Equal(t, []string{"B=2", "A=9"}, env)
}

func TestPrependPath_Unset(t *testing.T) {
	env := prependPath([]string{"HOME=/h"}, "LD_LIBRARY_PATH", "/lib")
	got, ok := lookupEnv(env, "LD_LIBRARY_PATH")
	assert.True(t, ok)
	assert.Equal(t, "/lib", got)
}
