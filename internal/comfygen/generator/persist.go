package generator

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"

	"comfygen/pkg/errors"
)

// Format selects the serialization used by Persist.
type Format string

const (
	FormatJSON Format = "json"
	FormatINI  Format = "ini"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

// Persist writes the document to <workDir>/<filename> in the requested
// format. The write goes through a renameio pending file, so either the
// complete new content lands atomically or the previous state is left
// untouched. I/O failures are logged and returned, never panicked.
func (g *Generator) Persist(doc any, filename string, format Format) error {
	path := filepath.Join(g.WorkDir, filename)

	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		perr := errors.NewPersistError(path, "create", err)
		g.logger.Error().Err(err).Str("path", path).Msg("failed to create pending artifact")
		return perr
	}
	defer func() {
		// renameio removes the temp file if it was never committed
		if err := pending.Cleanup(); err != nil {
			g.logger.Debug().Err(err).Str("path", path).Msg("cleanup pending artifact")
		}
	}()

	if err := encode(pending, doc, format); err != nil {
		perr := errors.NewPersistError(path, "encode", err)
		g.logger.Error().Err(err).Str("path", path).Str("format", string(format)).
			Msg("failed to encode artifact")
		return perr
	}

	// fsync + rename: durable and atomic
	if err := pending.CloseAtomicallyReplace(); err != nil {
		perr := errors.NewPersistError(path, "replace", err)
		g.logger.Error().Err(err).Str("path", path).Msg("failed to replace artifact")
		return perr
	}

	g.logger.Info().Str("path", path).Str("format", string(format)).Msg("artifact written")
	return nil
}

func encode(w io.Writer, doc any, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		// keep <, >, & and non-ASCII exactly as generated
		enc.SetEscapeHTML(false)
		return enc.Encode(doc)
	case FormatINI:
		sections, ok := doc.(Sections)
		if !ok {
			return fmt.Errorf("ini format requires a Sections document, got %T", doc)
		}
		return encodeINI(w, sections)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatText:
		_, err := io.WriteString(w, fmt.Sprint(doc))
		return err
	default:
		return fmt.Errorf("%w: %q", errors.ErrUnknownFormat, format)
	}
}

// encodeINI renders the two-level section/key layout supervisord expects.
// Values are written bare: supervisord does its own tokenizing and
// already-quoted values like PATH="..." must pass through untouched,
// which rules out the quoting TOML encoders apply.
func encodeINI(w io.Writer, sections Sections) error {
	for _, section := range sections {
		if _, err := fmt.Fprintf(w, "[%s]\n", section.Name); err != nil {
			return err
		}
		for _, entry := range section.Entries {
			if _, err := fmt.Fprintf(w, "%s = %v\n", entry.Key, entry.Value); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
