package readinglist

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	books   []Book
	loadErr error
	saveErr error
	saves   int
}

func (f *fakeStorage) Load(context.Context) ([]Book, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return cloneBooks(f.books), nil
}

func (f *fakeStorage) Save(_ context.Context, books []Book) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.books = cloneBooks(books)
	return nil
}

func newTestList(t *testing.T, stored ...Book) (*List, *fakeStorage) {
	t.Helper()
	fs := &fakeStorage{books: stored}
	l := New(fs)
	require.NoError(t, l.Initialize(context.Background()))
	return l, fs
}

func book(key string, status Status) Book {
	return Book{Key: key, Title: "Title " + key, AuthorName: []string{"Author " + key}, Status: status}
}

func keys(books []Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.Key)
	}
	return out
}

func TestInitialize_EmptyStorage(t *testing.T) {
	l, _ := newTestList(t)
	assert.Equal(t, 0, l.Snapshot().Len())
}

func TestInitialize_CorruptDataStartsEmpty(t *testing.T) {
	fs := &fakeStorage{loadErr: fmt.Errorf("decode: %w", ErrCorrupt)}
	l := New(fs)

	require.NoError(t, l.Initialize(context.Background()))
	assert.Equal(t, 0, l.Snapshot().Len())
}

func TestInitialize_ReadErrorIsReportedAndListEmpty(t *testing.T) {
	fs := &fakeStorage{books: []Book{book("a", StatusDone)}}
	l := New(fs)
	require.NoError(t, l.Initialize(context.Background()))
	require.Equal(t, 1, l.Snapshot().Len())

	fs.loadErr = errors.New("permission denied")
	err := l.Initialize(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
	assert.Equal(t, 0, l.Snapshot().Len())
}

func TestInitialize_IsRepeatableAndOverwritesMemory(t *testing.T) {
	l, fs := newTestList(t, book("a", StatusBacklog))

	fs.books = []Book{book("b", StatusDone), book("c", StatusInProgress)}
	require.NoError(t, l.Initialize(context.Background()))

	assert.Equal(t, []string{"b", "c"}, keys(l.Snapshot().Books))
}

func TestAdd_ForcesBacklogAndAppends(t *testing.T) {
	l, fs := newTestList(t)
	ctx := context.Background()

	inputs := []Book{book("k1", StatusDone), book("k2", StatusInProgress), book("k3", "")}
	for _, b := range inputs {
		require.NoError(t, l.Add(ctx, b))
	}

	snap := l.Snapshot()
	require.Equal(t, len(inputs), snap.Len())
	assert.Equal(t, []string{"k1", "k2", "k3"}, keys(snap.Books))
	for _, b := range snap.Books {
		assert.Equal(t, StatusBacklog, b.Status, "book %s", b.Key)
	}
	assert.Equal(t, 3, fs.saves)
	assert.Equal(t, snap.Books, fs.books)
}

func TestAdd_CopiesCallerData(t *testing.T) {
	l, _ := newTestList(t)
	pages := 300
	in := Book{Key: "k", AuthorName: []string{"A"}, NumberOfPagesMedian: &pages}

	require.NoError(t, l.Add(context.Background(), in))
	in.AuthorName[0] = "changed"
	pages = 1

	got, ok := l.Snapshot().Find("k")
	require.True(t, ok)
	assert.Equal(t, []string{"A"}, got.AuthorName)
	assert.Equal(t, 300, *got.NumberOfPagesMedian)
}

func TestAdd_RejectsDuplicateAndEmptyKeys(t *testing.T) {
	l, fs := newTestList(t, book("k1", StatusDone))
	ctx := context.Background()

	err := l.Add(ctx, book("k1", StatusBacklog))
	require.ErrorIs(t, err, ErrDuplicateKey)
	require.ErrorIs(t, l.Add(ctx, Book{Title: "no key"}), ErrEmptyKey)

	snap := l.Snapshot()
	assert.Equal(t, 1, snap.Len())
	assert.Equal(t, StatusDone, snap.Books[0].Status)
	assert.Zero(t, fs.saves)
}

func TestMove_ChangesStatusKeepsPosition(t *testing.T) {
	l, _ := newTestList(t, book("a", StatusBacklog), book("b", StatusBacklog), book("c", StatusBacklog))
	ctx := context.Background()

	require.NoError(t, l.Move(ctx, "b", StatusInProgress))

	snap := l.Snapshot()
	assert.Equal(t, []string{"a", "b", "c"}, keys(snap.Books))
	assert.Equal(t, []string{"b"}, keys(snap.Partition(StatusInProgress)))
	assert.Equal(t, []string{"a", "c"}, keys(snap.Partition(StatusBacklog)))
	assert.Empty(t, snap.Partition(StatusDone))
}

func TestMove_MembershipAcrossAllStatuses(t *testing.T) {
	ctx := context.Background()
	for _, target := range Statuses() {
		t.Run(string(target), func(t *testing.T) {
			l, _ := newTestList(t, book("a", StatusBacklog), book("b", StatusDone))
			require.NoError(t, l.Move(ctx, "a", target))

			snap := l.Snapshot()
			for _, s := range Statuses() {
				inPartition := false
				for _, b := range snap.Partition(s) {
					if b.Key == "a" {
						inPartition = true
					}
				}
				assert.Equal(t, s == target, inPartition, "status %s", s)
			}
		})
	}
}

func TestMove_UnknownKeyStillPersists(t *testing.T) {
	l, fs := newTestList(t, book("a", StatusBacklog))

	require.NoError(t, l.Move(context.Background(), "missing", StatusDone))

	assert.Equal(t, 1, fs.saves)
	assert.Equal(t, StatusBacklog, l.Snapshot().Books[0].Status)
}

func TestMove_InvalidStatus(t *testing.T) {
	l, fs := newTestList(t, book("a", StatusBacklog))

	err := l.Move(context.Background(), "a", Status("archived"))
	require.ErrorIs(t, err, ErrInvalidStatus)
	assert.Zero(t, fs.saves)
}

func TestMove_DonePartitionFollowsListOrder(t *testing.T) {
	l, _ := newTestList(t)
	ctx := context.Background()
	for _, k := range []string{"first", "second", "third"} {
		require.NoError(t, l.Add(ctx, book(k, StatusDone)))
	}

	require.NoError(t, l.Move(ctx, "third", StatusDone))
	require.NoError(t, l.Move(ctx, "first", StatusDone))

	done := l.Partition(StatusDone)
	assert.Equal(t, []string{"first", "third"}, keys(done))
}

func TestRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("removes matching key", func(t *testing.T) {
		l, fs := newTestList(t, book("a", StatusBacklog), book("b", StatusDone))
		n, err := l.Remove(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, []string{"b"}, keys(l.Snapshot().Books))
		assert.Equal(t, []string{"b"}, keys(fs.books))
	})

	t.Run("unknown key leaves list and still persists", func(t *testing.T) {
		l, fs := newTestList(t, book("a", StatusBacklog))
		before := l.Snapshot()
		n, err := l.Remove(ctx, "zzz")
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Equal(t, before, l.Snapshot())
		assert.Equal(t, 1, fs.saves)
	})

	t.Run("removes every duplicate from stored data", func(t *testing.T) {
		l, _ := newTestList(t, book("a", StatusBacklog), book("a", StatusDone), book("b", StatusDone))
		n, err := l.Remove(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, []string{"b"}, keys(l.Snapshot().Books))
	})
}

func TestReorder_MoveAndShiftWithinPartition(t *testing.T) {
	l, _ := newTestList(t,
		book("b1", StatusBacklog),
		book("d1", StatusDone),
		book("b2", StatusBacklog),
		book("b3", StatusBacklog),
		book("i1", StatusInProgress),
		book("b4", StatusBacklog),
	)

	require.NoError(t, l.Reorder(context.Background(), StatusBacklog, 0, 2))

	snap := l.Snapshot()
	assert.Equal(t, []string{"b2", "b3", "b1", "b4"}, keys(snap.Partition(StatusBacklog)))
	assert.Equal(t, []string{"b2", "d1", "b3", "b1", "i1", "b4"}, keys(snap.Books))
}

func TestReorder_BackwardMove(t *testing.T) {
	l, _ := newTestList(t, book("a", StatusDone), book("b", StatusDone), book("c", StatusDone))

	require.NoError(t, l.Reorder(context.Background(), StatusDone, 2, 0))

	assert.Equal(t, []string{"c", "a", "b"}, keys(l.Partition(StatusDone)))
}

func TestReorder_IsPermutationAndLeavesOtherStatuses(t *testing.T) {
	stored := []Book{
		book("x1", StatusDone), book("b1", StatusBacklog), book("x2", StatusInProgress),
		book("b2", StatusBacklog), book("b3", StatusBacklog), book("x3", StatusDone),
	}
	ctx := context.Background()

	for from := 0; from < 3; from++ {
		for to := 0; to < 3; to++ {
			t.Run(fmt.Sprintf("%d_to_%d", from, to), func(t *testing.T) {
				l, _ := newTestList(t, stored...)
				require.NoError(t, l.Reorder(ctx, StatusBacklog, from, to))

				snap := l.Snapshot()
				assert.ElementsMatch(t, []string{"b1", "b2", "b3"}, keys(snap.Partition(StatusBacklog)))
				assert.Equal(t, []string{"x1", "x3"}, keys(snap.Partition(StatusDone)))
				assert.Equal(t, []string{"x2"}, keys(snap.Partition(StatusInProgress)))
				for i, b := range snap.Books {
					if stored[i].Status != StatusBacklog {
						assert.Equal(t, stored[i], b)
					}
				}
			})
		}
	}
}

func TestReorder_InvalidInput(t *testing.T) {
	l, fs := newTestList(t, book("a", StatusBacklog), book("b", StatusBacklog))
	ctx := context.Background()

	cases := []struct {
		name     string
		status   Status
		from, to int
		want     error
	}{
		{"from negative", StatusBacklog, -1, 0, ErrInvalidIndex},
		{"to past end", StatusBacklog, 0, 2, ErrInvalidIndex},
		{"empty partition", StatusDone, 0, 0, ErrInvalidIndex},
		{"unknown status", Status("paused"), 0, 1, ErrInvalidStatus},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := l.Reorder(ctx, tc.status, tc.from, tc.to)
			require.ErrorIs(t, err, tc.want)
		})
	}
	assert.Equal(t, []string{"a", "b"}, keys(l.Snapshot().Books))
	assert.Zero(t, fs.saves)
}

func TestSaveFailureRollsBack(t *testing.T) {
	l, fs := newTestList(t, book("a", StatusBacklog), book("b", StatusBacklog))
	ctx := context.Background()
	before := l.Snapshot()

	var published int
	l.Subscribe(func(Snapshot) { published++ })

	fs.saveErr = errors.New("disk full")

	require.ErrorIs(t, l.Add(ctx, book("c", StatusBacklog)), ErrPersist)
	require.ErrorIs(t, l.Move(ctx, "a", StatusDone), ErrPersist)
	require.ErrorIs(t, l.Reorder(ctx, StatusBacklog, 0, 1), ErrPersist)
	_, err := l.Remove(ctx, "a")
	require.ErrorIs(t, err, ErrPersist)
	assert.Contains(t, err.Error(), "disk full")

	assert.Equal(t, before, l.Snapshot())
	assert.Zero(t, published)
}

func TestSubscribe_ReceivesSnapshotsUntilCancelled(t *testing.T) {
	l, _ := newTestList(t)
	ctx := context.Background()

	var got []int
	cancel := l.Subscribe(func(s Snapshot) { got = append(got, s.Len()) })

	require.NoError(t, l.Add(ctx, book("a", StatusBacklog)))
	require.NoError(t, l.Add(ctx, book("b", StatusBacklog)))
	cancel()
	require.NoError(t, l.Add(ctx, book("c", StatusBacklog)))

	assert.Equal(t, []int{1, 2}, got)
}

func TestSnapshot_IsIndependentCopy(t *testing.T) {
	l, _ := newTestList(t, book("a", StatusBacklog))

	snap := l.Snapshot()
	snap.Books[0].Status = StatusDone
	snap.Books[0].AuthorName[0] = "mutated"

	fresh := l.Snapshot()
	assert.Equal(t, StatusBacklog, fresh.Books[0].Status)
	assert.Equal(t, "Author a", fresh.Books[0].AuthorName[0])
}

func TestScenario_SingleBookLifecycle(t *testing.T) {
	l, fs := newTestList(t)
	ctx := context.Background()
	require.Equal(t, 0, l.Snapshot().Len())

	require.NoError(t, l.Add(ctx, Book{Key: "k1", Title: "T", Status: StatusDone}))
	snap := l.Snapshot()
	require.Equal(t, 1, snap.Len())
	assert.Equal(t, StatusBacklog, snap.Books[0].Status)

	require.NoError(t, l.Move(ctx, "k1", StatusInProgress))
	assert.Equal(t, StatusInProgress, l.Snapshot().Books[0].Status)

	before := l.Snapshot()
	require.NoError(t, l.Reorder(ctx, StatusInProgress, 0, 0))
	assert.Equal(t, before, l.Snapshot())

	n, err := l.Remove(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, l.Snapshot().Len())
	assert.Empty(t, fs.books)
}

func TestPartitionsCoverCollection(t *testing.T) {
	l, _ := newTestList(t,
		book("a", StatusDone), book("b", StatusBacklog), book("c", StatusInProgress), book("d", StatusBacklog))

	snap := l.Snapshot()
	total := 0
	for _, s := range Statuses() {
		total += len(snap.Partition(s))
	}
	assert.Equal(t, snap.Len(), total)
	assert.Equal(t, map[Status]int{StatusBacklog: 2, StatusInProgress: 1, StatusDone: 1}, snap.Counts())
}

func TestReload_ReplacesListFromStorage(t *testing.T) {
	l, fs := newTestList(t, book("a", StatusBacklog))

	var published int
	l.Subscribe(func(Snapshot) { published++ })

	fs.books = []Book{book("b", StatusDone)}
	require.NoError(t, l.Reload(context.Background()))
	assert.Equal(t, []string{"b"}, keys(l.Snapshot().Books))
	assert.Equal(t, 1, published)
}

func TestReload_FailureKeepsCurrentList(t *testing.T) {
	l, fs := newTestList(t, book("a", StatusBacklog), book("b", StatusBacklog), book("c", StatusDone))
	ctx := context.Background()

	var published int
	l.Subscribe(func(Snapshot) { published++ })

	for _, loadErr := range []error{
		errors.New("input/output error"),
		fmt.Errorf("decode: %w", ErrCorrupt),
	} {
		fs.loadErr = loadErr
		err := l.Reload(ctx)
		require.ErrorIs(t, err, loadErr)
		assert.Equal(t, []string{"a", "b", "c"}, keys(l.Snapshot().Books))
	}
	assert.Zero(t, published)

	// A later edit saves on top of the kept list, not an empty one.
	fs.loadErr = nil
	require.NoError(t, l.Add(ctx, book("d", StatusBacklog)))
	assert.Equal(t, []string{"a", "b", "c", "d"}, keys(fs.books))
}

func TestShift_ResolvesPositionWhenRun(t *testing.T) {
	l, fs := newTestList(t, book("a", StatusBacklog), book("x", StatusDone), book("b", StatusBacklog), book("c", StatusBacklog))
	ctx := context.Background()

	// Two shifts of the same book compose instead of undoing each other.
	require.NoError(t, l.Shift(ctx, "c", -1))
	require.NoError(t, l.Shift(ctx, "c", -1))
	assert.Equal(t, []string{"c", "a", "b"}, keys(l.Partition(StatusBacklog)))
	assert.Equal(t, []string{"c", "x", "a", "b"}, keys(l.Snapshot().Books))
	assert.Equal(t, 2, fs.saves)

	require.NoError(t, l.Shift(ctx, "a", 1))
	assert.Equal(t, []string{"c", "b", "a"}, keys(l.Partition(StatusBacklog)))
}

func TestShift_EdgesAndUnknownKeysWriteNothing(t *testing.T) {
	l, fs := newTestList(t, book("a", StatusBacklog), book("b", StatusBacklog), book("x", StatusDone))
	ctx := context.Background()

	require.NoError(t, l.Shift(ctx, "a", -1))
	require.NoError(t, l.Shift(ctx, "b", 1))
	require.NoError(t, l.Shift(ctx, "x", 1))
	require.NoError(t, l.Shift(ctx, "missing", 1))
	require.NoError(t, l.Shift(ctx, "a", 0))

	assert.Equal(t, []string{"a", "b", "x"}, keys(l.Snapshot().Books))
	assert.Zero(t, fs.saves)
}

func TestShift_SaveFailureRollsBack(t *testing.T) {
	l, fs := newTestList(t, book("a", StatusBacklog), book("b", StatusBacklog))
	fs.saveErr = errors.New("disk full")

	require.ErrorIs(t, l.Shift(context.Background(), "b", -1), ErrPersist)
	assert.Equal(t, []string{"a", "b"}, keys(l.Snapshot().Books))
}
