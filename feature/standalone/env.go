package standalone

import (
	"os"
	"strings"

	"milvus-server/core/server"
)

// buildEnv returns the child environment: base plus DEPLOY_MODE and, on linux and
// darwin, the library search path prefixed with libDir.
func buildEnv(base []string, goos, libDir string) []string {
	env := setEnv(base, "DEPLOY_MODE", server.DeployMode)
	switch goos {
	case "linux":
		env = prependPath(env, "LD_LIBRARY_PATH", libDir)
	case "darwin":
		env = prependPath(env, "DYLD_LIBRARY_PATH", libDir)
	}
	return env
}

func lookupEnv(env []string, key string) (string, bool) {
	prefix := key + "="
	for i := len(env) - 1; i >= 0; i-- {
		if strings.HasPrefix(env[i], prefix) {
			return env[i][len(prefix):], true
		}
	}
	return "", false
}

// setEnv returns a copy of env with every entry for key replaced by key=val.
func setEnv(env []string, key, val string) []string {
	prefix := key + "="
	out := make([]string, 0, len(env)+1)
	for _, kv := range env {
		if !strings.HasPrefix(kv, prefix) {
			out = append(out, kv)
		}
	}
	return append(out, prefix+val)
}

func prependPath(env []string, key, dir string) []string {
	val := dir
	if old, ok := lookupEnv(env, key); ok && old != "" {
		val = dir + string(os.PathListSeparator) + old
	}
	return setEnv(env, key, val)
}
