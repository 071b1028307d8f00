package types

// Version is the prship build version, overwritten with -ldflags at release time
var Version = "dev"
