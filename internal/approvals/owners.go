package approvals

import (
	zglob "github.com/mattn/go-zglob"
	"github.com/sirupsen/logrus"

	"github.com/ylck/marge-bot/internal/host"
)

// ResponsibleOwners computes the owners responsible for a set of changed
// files. Owners registered under the global "*" glob are always included.
// Every changed path is checked against every glob; a path may satisfy
// several globs and all of them contribute.
func ResponsibleOwners(rules Rules, changes []host.ChangedFile, log *logrus.Entry) map[string]struct{} {
	owners := map[string]struct{}{}

	for owner := range rules["*"] {
		owners[owner] = struct{}{}
	}

	if len(changes) == 0 {
		log.Info("no changes in merge request, only global owners apply")
		return owners
	}

	for _, change := range changes {
		for glob, users := range rules {
			matched, err := zglob.Match(glob, change.NewPath)
			if err != nil {
				log.WithField("glob", glob).WithError(err).Debug("skipping malformed owner glob")
				continue
			}
			if matched {
				for owner := range users {
					owners[owner] = struct{}{}
				}
			}
		}
	}

	return owners
}
