package functiondb

import (
	"sort"

	"github.com/melodypapa/autosar-calltree/model"
	"github.com/melodypapa/autosar-calltree/modulemap"
)

// FileIndex exposes the by_file index directly, so package cache can
// serialize it (spec §4.5: by_file alone is sufficient to regenerate
// by_name and by_qualified on load).
func (db *FunctionDatabase) FileIndex() map[string][]*model.FunctionInfo {
	return db.byFile
}

// FilesScanned reports how many source files this build's index covers.
func (db *FunctionDatabase) FilesScanned() int {
	return db.filesScanned
}

// RebuildFromFiles reconstructs a FunctionDatabase's by_name and
// by_qualified indexes from a previously-serialized by_file map, reapplying
// module assignment through mapper before insertion (spec §4.5 load
// protocol step 4: "the mapper may have changed since last write").
func RebuildFromFiles(byFile map[string][]model.FunctionInfo, mapper *modulemap.Mapper, filesScanned int) *FunctionDatabase {
	db := New()
	db.filesScanned = filesScanned
	db.SetMapper(mapper)

	paths := make([]string, 0, len(byFile))
	for path := range byFile {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		for _, info := range byFile[path] {
			if !info.HasQualified && info.Name != "" {
				assignQualifiedName(&info)
			}
			db.add(info)
		}
	}
	return db
}
