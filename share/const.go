package share

// VERSION lisa version
const VERSION = "0.3.0"

// PRVERSION lisa build commit and time, set by the release build
const PRVERSION = "DEV"

// BUILDNAME The name of the artifact
const BUILDNAME = "lisa"
