// Command cartkeep manages a content-addressed rom library: ingesting rom
// files, enriching them with catalog metadata and artwork, and syncing the
// selected subset onto a cartridge device.
package main
