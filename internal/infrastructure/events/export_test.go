package events

var BuildRecord = buildRecord
