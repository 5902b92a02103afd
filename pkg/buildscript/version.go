package buildscript

// Version is the tool version. Scripts can pin the versions they work with
// through require_version() and every snapshot records the version it was
// generated by.
const Version = "0.2.0"
