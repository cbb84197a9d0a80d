package model

import (
	"encoding/base32"

	"github.com/pborman/uuid"
)

var encoding = base32.NewEncoding("ybndrfg8ejkmcpqxot1uwisza345h769").WithPadding(base32.NoPadding)

// NewID produces a compact, globally unique identifier, used to tag a server
// instance in log output.
func NewID() string {
	return encoding.EncodeToString(uuid.NewRandom())
}
