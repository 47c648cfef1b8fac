package soundbank

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// Ext is the canonical archive suffix. Export normalizes any
	// destination name to it.
	Ext = ".soundbank"

	manifestName    = "manifest.json"
	manifestVersion = 1
)

type manifestDoc struct {
	Version int                `json:"version"`
	Cues    map[string]*string `json:"cues"`
}

// Export writes the bank as a compressed archive at dest and returns
// the normalized output path. Every cue gets a manifest entry: the
// in-archive asset name when a registered asset exists on disk, null
// otherwise. The manifest is written even when all cues are empty, and
// its content is deterministic for a given set of registered assets.
func (b *Bank) Export(dest string) (string, error) {
	outPath := strings.TrimSuffix(dest, filepath.Ext(dest)) + Ext

	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("creating archive %s: %w", outPath, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	names := make(map[Cue]string)

	for _, cue := range cueOrder {
		src := b.CueFile(cue)
		if src == "" {
			continue
		}
		if _, err := os.Stat(src); err != nil {
			continue
		}

		arcName := string(cue) + strings.ToLower(filepath.Ext(src))
		w, err := zw.Create(arcName)
		if err != nil {
			return "", fmt.Errorf("adding %s to archive: %w", arcName, err)
		}
		in, err := os.Open(src)
		if err != nil {
			return "", fmt.Errorf("reading cue asset %s: %w", src, err)
		}
		_, err = io.Copy(w, in)
		in.Close()
		if err != nil {
			return "", fmt.Errorf("copying %s into archive: %w", arcName, err)
		}
		names[cue] = arcName
	}

	mw, err := zw.Create(manifestName)
	if err != nil {
		return "", fmt.Errorf("adding manifest to archive: %w", err)
	}
	if _, err := mw.Write(encodeManifest(names)); err != nil {
		return "", fmt.Errorf("writing manifest: %w", err)
	}

	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("finalizing archive %s: %w", outPath, err)
	}
	return outPath, nil
}

// Import reads the archive at src, extracts every referenced asset
// into a fresh timestamped subdirectory of the bank, and registers
// each extracted asset against its cue, replacing prior registrations.
// Cues absent or null in the manifest are left untouched. A malformed
// archive yields a *FormatError; assets registered before the failing
// entry stay registered.
func (b *Bank) Import(src string) error {
	zr, err := zip.OpenReader(src)
	if err != nil {
		return &FormatError{Path: src, Reason: "not a readable archive", Err: err}
	}
	defer zr.Close()

	entries := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		entries[f.Name] = f
	}

	mf, ok := entries[manifestName]
	if !ok {
		return &FormatError{Path: src, Reason: "missing " + manifestName}
	}
	raw, err := readZipEntry(mf)
	if err != nil {
		return &FormatError{Path: src, Reason: "unreadable manifest", Err: err}
	}

	var m manifestDoc
	if err := json.Unmarshal(raw, &m); err != nil {
		return &FormatError{Path: src, Reason: "unparseable manifest", Err: err}
	}
	if m.Cues == nil {
		return &FormatError{Path: src, Reason: "manifest has no cues mapping"}
	}

	targetDir, err := b.newImportDir()
	if err != nil {
		return err
	}

	for _, cue := range cueOrder {
		name := m.Cues[string(cue)]
		if name == nil || *name == "" {
			continue
		}

		entry, ok := entries[*name]
		if !ok {
			return &FormatError{
				Path:   src,
				Reason: fmt.Sprintf("manifest references missing entry %q for cue %s", *name, cue),
			}
		}

		dest := filepath.Join(targetDir, filepath.Base(*name))
		if err := extractZipEntry(entry, dest); err != nil {
			return fmt.Errorf("extracting %s: %w", *name, err)
		}
		if err := b.SetCueFile(cue, dest); err != nil {
			return err
		}
	}
	return nil
}

// newImportDir creates a unique extraction directory under the bank.
func (b *Bank) newImportDir() (string, error) {
	stamp := time.Now().Format("20060102_150405")
	dir := filepath.Join(b.baseDir, "soundbank_"+stamp)
	for i := 2; ; i++ {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			break
		}
		dir = filepath.Join(b.baseDir, fmt.Sprintf("soundbank_%s_%d", stamp, i))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating import directory %s: %w", dir, err)
	}
	return dir, nil
}

// encodeManifest renders the manifest with entries in canonical cue
// order so identical banks export byte-identical manifests.
func encodeManifest(names map[Cue]string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "{\n  \"version\": %d,\n  \"cues\": {\n", manifestVersion)
	for i, cue := range cueOrder {
		fmt.Fprintf(&buf, "    %q: ", string(cue))
		if name, ok := names[cue]; ok {
			v, _ := json.Marshal(name)
			buf.Write(v)
		} else {
			buf.WriteString("null")
		}
		if i < len(cueOrder)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("  }\n}\n")
	return buf.Bytes()
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func extractZipEntry(f *zip.File, dest string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
