// Package cli defines the carousel command line with cobra.
//
//	carousel [--config path]                  open the TUI
//	carousel play [--deck f] [--autoplay] [--interval d]
//	carousel headless [--deck f] [--for d]    log transitions, read commands from stdin
package cli
