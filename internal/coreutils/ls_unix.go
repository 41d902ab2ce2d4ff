// SPDX-License-Identifier: MPL-2.0

//go:build unix

package coreutils

import (
	"io/fs"
	"os/user"
	"strconv"
	"syscall"
)

// ownerOf reads the link count and owner names from the raw stat data.
// Unknown IDs are printed numerically.
func ownerOf(info fs.FileInfo) ownership {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return ownership{links: 1, user: "-", group: "-"}
	}

	uid := strconv.FormatUint(uint64(st.Uid), 10)
	gid := strconv.FormatUint(uint64(st.Gid), 10)
	own := ownership{links: uint64(st.Nlink), user: uid, group: gid}

	if u, err := user.LookupId(uid); err == nil {
		own.user = u.Username
	}
	if g, err := user.LookupGroupId(gid); err == nil {
		own.group = g.Name
	}
	return own
}
