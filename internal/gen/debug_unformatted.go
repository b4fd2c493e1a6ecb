package gen

import (
	"os"
	"path/filepath"
	"strings"
)

// debugSuffix names the sidecar of a file that failed to format. It is not a
// .go file: the sidecar sits next to the package sources and must not break
// the package build.
const debugSuffix = ".unformatted.txt"

// writeDebugUnformatted writes unformatted code to a sidecar file next to the
// intended output. This is best-effort and should never make generation fail
// harder.
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}

	debugName := strings.TrimSuffix(filename, ".go") + debugSuffix

	return os.WriteFile(filepath.Join(outDir, debugName), content, filePerm)
}
