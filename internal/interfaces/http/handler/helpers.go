package handler

// pageOf mirrors the default paging applied by the application services so
// the response meta matches what was actually queried.
func pageOf(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

func pageSizeOf(pageSize int) int {
	if pageSize <= 0 {
		return 20
	}
	return pageSize
}
