package anvil

import "errors"

// errRegionTruncated reports a region entry whose data cannot be read
// within its sectors or the file, or a payload too large to store. Source.Load
// logs it and reports the chunk as absent; Source.Save returns it as is when
// a chunk's payload needs more than 255 sectors.
var errRegionTruncated = errors.New("anvil: region header points past end of file")
