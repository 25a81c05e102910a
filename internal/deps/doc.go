// Package deps reports availability of the external binaries ffui drives.
package deps
