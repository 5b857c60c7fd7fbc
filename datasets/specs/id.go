package specs

import "os"
import "path/filepath"
import "sort"
import "strings"

import "github.com/pkg/errors"

// Separator joins the site and the local name of a spec.
const Separator = "//"

// Extension of spec documents
const Extension = ".json"

// ID builds the identifier of spec local on site.
func ID(site, local string) string {
	return site + Separator + local
}

// SplitID is the inverse of ID.
func SplitID(id string) (site, local string, ok bool) {
	i := strings.Index(id, Separator)
	if i <= 0 || i+len(Separator) == len(id) {
		return "", "", false
	}
	return id[:i], id[i+len(Separator):], true
}

// Path is the document file of spec id under dir.
func Path(dir, id string) (string, error) {
	site, local, ok := SplitID(id)
	if !ok {
		return "", errors.Errorf("malformed spec id %q", id)
	}
	return filepath.Join(dir, site, local+Extension), nil
}

// Scan lists the spec ids found under dir, sorted. Files at the top level and
// files without the document extension are ignored.
func Scan(dir string) ([]string, error) {
	sites, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "scan dataset")
	}
	var ids []string
	for _, site := range sites {
		if !site.IsDir() {
			continue
		}
		docs, err := os.ReadDir(filepath.Join(dir, site.Name()))
		if err != nil {
			return nil, errors.Wrapf(err, "scan site %s", site.Name())
		}
		for _, doc := range docs {
			name := doc.Name()
			if doc.IsDir() || !strings.HasSuffix(name, Extension) || name == Extension {
				continue
			}
			ids = append(ids, ID(site.Name(), strings.TrimSuffix(name, Extension)))
		}
	}
	sort.Strings(ids)
	return ids, nil
}
