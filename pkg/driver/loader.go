package driver

import (
	"fmt"
	"time"

	"github.com/leonardohn/rinha-interpreter/pkg/ast"
	"github.com/leonardohn/rinha-interpreter/pkg/log"
)

// LoadProgram decodes the document at path.
func LoadProgram(path string) (*ast.File, error) {
	started := time.Now()
	file, err := ast.DecodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load program: %w", err)
	}
	if file.Expression == nil {
		return nil, fmt.Errorf("failed to load program: %s has no expression", path)
	}
	log.Debugf("loaded %s (%s): %d nodes in %s", path, file.Name, ast.CountNodes(file.Expression), time.Since(started))
	return file, nil
}
