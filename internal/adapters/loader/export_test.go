package loader

var ForgeVersionTag = forgeVersionTag
