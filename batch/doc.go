// SPDX-License-Identifier: EPL-2.0

// Package batch runs one pass over a directory tree: discover the files a
// pass cares about, plan a command for each, print the plan, ask for
// confirmation and execute.
//
// Planning never touches the filesystem beyond reading, so a declined
// confirmation or a dry run leaves the tree exactly as it was. Execution
// is sequential and stops at the first failing command; there is no undo.
package batch
