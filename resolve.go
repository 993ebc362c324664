package fat16

import (
	"strings"

	"github.com/gofat16/fat16/checkpoint"
)

// clusterReader is the subset of *Volume that path resolution, file
// reads and directory reads depend on. Depending on the interface
// rather than the concrete type lets unit tests substitute a mock
// backed by an in-memory directory/cluster layout instead of a real
// Device.
type clusterReader interface {
	readRootDir() ([]byte, error)
	readChain(chain ClusterChain) ([]byte, error)
	ResolveChain(firstCluster uint16) (ClusterChain, error)
}

// dirFrame is one level of the directory stack resolvePath walks: the
// decoded entries of a directory, plus the DecodedEntry (if any) that
// names the directory itself, so ".." can step back to it.
type dirFrame struct {
	entries []DecodedEntry
	self    DecodedEntry
	isRoot  bool
	isFile  bool
}

// splitPath breaks an absolute backslash-separated path into
// upper-cased components (FAT short names are case-insensitive).
// Forward slashes are accepted as an alternate separator. Empty
// components (from a leading, trailing, or doubled separator) are
// dropped; "." and ".." are kept, since resolvePath gives them
// separate navigational meaning.
func splitPath(path string) []string {
	raw := strings.Split(strings.ReplaceAll(path, "/", `\`), `\`)
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		if p == "" {
			continue
		}
		out = append(out, strings.ToUpper(p))
	}
	return out
}

// listDirectory reads and decodes one directory's entries, given
// either the root (isRoot true) or a first cluster. Per Open Question
// 4, "." and ".." slots are dropped from the decoded listing entirely:
// path resolution implements "." and ".." as stack operations instead
// of name lookups, so the two dot entries carry no information this
// package needs from the raw listing.
func listDirectory(cr clusterReader, isRoot bool, firstCluster uint16) ([]DecodedEntry, error) {
	var buf []byte
	var err error

	if isRoot {
		buf, err = cr.readRootDir()
	} else {
		var chain ClusterChain
		chain, err = cr.ResolveChain(firstCluster)
		if err != nil {
			return nil, err
		}
		buf, err = cr.readChain(chain)
	}
	if err != nil {
		return nil, err
	}

	all, err := parseDirectory(buf)
	if err != nil {
		return nil, err
	}

	out := all[:0]
	for _, e := range all {
		if e.ShortName == "." || e.ShortName == ".." {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// rootEntry is the synthetic DecodedEntry standing in for the root
// directory itself, which has no SFN of its own in FAT16.
var rootEntry = DecodedEntry{attr: AttrDirectory}

// resolvePath walks an absolute path from the root directory down to
// the named entry, maintaining an explicit directory stack so "."
// and ".." behave as §4.5 specifies rather than as ordinary name
// lookups. It reports ErrNotADirectory if a non-leaf component names
// a regular file or the volume label, and ErrNotFound if any
// component is absent or ".." is attempted at the root.
func resolvePath(cr clusterReader, path string) (DecodedEntry, error) {
	components := splitPath(path)

	rootEntries, err := listDirectory(cr, true, 0)
	if err != nil {
		return DecodedEntry{}, err
	}
	stack := []dirFrame{{entries: rootEntries, self: rootEntry, isRoot: true}}

	for _, name := range components {
		top := &stack[len(stack)-1]
		if top.isFile {
			// The previous component resolved to a regular file; nothing
			// can come after it.
			return DecodedEntry{}, checkpoint.From(ErrNotADirectory)
		}

		switch name {
		case ".":
			continue
		case "..":
			if len(stack) == 1 {
				return DecodedEntry{}, checkpoint.From(ErrNotFound)
			}
			stack = stack[:len(stack)-1]
			continue
		}

		found, ok := findByName(top.entries, name)
		if !ok {
			return DecodedEntry{}, checkpoint.From(ErrNotFound)
		}
		if found.IsVolumeLabel() {
			return DecodedEntry{}, checkpoint.From(ErrNotADirectory)
		}
		if !found.IsDir() {
			// A non-directory may only appear as the final component;
			// findByName matched it mid-path, so whatever component (if
			// any) follows will fail to resolve through it below.
			stack = append(stack, dirFrame{self: found, isFile: true})
			continue
		}

		childEntries, err := listDirectory(cr, false, found.FirstCluster)
		if err != nil {
			return DecodedEntry{}, err
		}
		stack = append(stack, dirFrame{entries: childEntries, self: found})
	}

	return stack[len(stack)-1].self, nil
}

// findByName matches a single path component against a directory's
// entries. The match is case-insensitive (components arrive already
// upper-cased from splitPath); LongName is compared case-insensitively
// too, since on-disk case is preserved for display but not for lookup
// (Open Question 2).
func findByName(entries []DecodedEntry, name string) (DecodedEntry, bool) {
	for _, e := range entries {
		if strings.EqualFold(e.ShortName, name) {
			return e, true
		}
		if e.HasLongName && strings.EqualFold(e.LongName, name) {
			return e, true
		}
	}
	return DecodedEntry{}, false
}
