package readinglist

// Snapshot is an immutable copy of the list at a point in time.
type Snapshot struct {
	Books []Book
}

// Len returns the number of books in the snapshot.
func (s Snapshot) Len() int {
	return len(s.Books)
}

// Partition returns the books with the given status in list order.
func (s Snapshot) Partition(status Status) []Book {
	return partition(s.Books, status)
}

// Find returns the book stored under key.
func (s Snapshot) Find(key string) (Book, bool) {
	for _, b := range s.Books {
		if b.Key == key {
			return b, true
		}
	}
	return Book{}, false
}

// Contains reports whether key is on the list.
func (s Snapshot) Contains(key string) bool {
	_, ok := s.Find(key)
	return ok
}

// Counts returns the number of books per status.
func (s Snapshot) Counts() map[Status]int {
	counts := make(map[Status]int, 3)
	for _, status := range Statuses() {
		counts[status] = 0
	}
	for _, b := range s.Books {
		counts[b.Status]++
	}
	return counts
}

func partition(books []Book, status Status) []Book {
	var out []Book
	for _, b := range books {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out
}

func cloneBooks(books []Book) []Book {
	if len(books) == 0 {
		return nil
	}
	dup := make([]Book, len(books))
	for i, b := range books {
		dup[i] = b.Clone()
	}
	return dup
}
