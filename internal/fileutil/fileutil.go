package fileutil

import "os"

// OwnerReadWrite is the file permission mode for resolved document output
// files containing potentially sensitive schema data (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600
