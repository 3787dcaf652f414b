package searchserver

// Version is overridden at build time with -ldflags "-X github.com/a-h/searchserver.Version=...".
var Version = "dev"
