//go:build !taskstats_noioacct

package taskstats

// ioAccounting reports whether read_bytes is part of the record layout.
// Build with -tags taskstats_noioacct for kernels without it.
const ioAccounting = true

const ioAccountingLen = 8
