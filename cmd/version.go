package cmd

// version is reported in security log events.
const version = "0.1.0"
