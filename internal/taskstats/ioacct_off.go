//go:build taskstats_noioacct

package taskstats

const ioAccounting = false

const ioAccountingLen = 0
