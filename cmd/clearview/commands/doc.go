// Package commands defines the clearview CLI.
//
// Commands
//
//   - gui       Launch the desktop app (the default when no command is given)
//   - clean     Remove watermarks from image files without the GUI
//   - version   Print the version
//
// Settings come from the environment and an optional .env file. Flags on
// clean override them for a single run.
package commands
