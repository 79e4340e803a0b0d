package common

const Version = `v0.3.2`
