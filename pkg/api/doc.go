// Package api provides the container model the definition front-end
// builds: workspaces holding projects, each backed by a config set, with a
// generic property bridge that routes reads and writes either to the
// resolution engine (for registered fields) or to plain attributes.
package api
