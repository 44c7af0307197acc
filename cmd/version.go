package cmd

import "nullc/common"

// Version is the version string the `nullc version` subcommand prints.
const Version = "nullc " + common.NullCVersion
