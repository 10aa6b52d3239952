package health

// DictionaryStat reports the size of the loaded dictionary snapshot.
type DictionaryStat interface {
	Len() int
}
