package match

import (
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/codesync/codesync/pkg/repo"
)

// Config controls a matcher run.
type Config struct {
	// SourceRoot and DestRoot are the repository roots. They're only opened
	// when CompareContents is set.
	SourceRoot string
	DestRoot   string

	// CompareContents enables the hash fallback: candidates that can't be
	// separated by name or path similarity are compared by byte length and
	// content checksum.
	CompareContents bool
}

// A Match pairs a source path with the destination path it corresponds to.
type Match struct {
	Source string
	Dest   string

	// ByHash marks matches decided by equal length plus equal checksum
	// rather than by filename.
	ByHash bool
}

// An Ambiguity is a source whose basename matched several destinations that
// couldn't be separated by path rank or content.
type Ambiguity struct {
	Source     string
	Candidates []string
}

// Result holds everything a matcher run produced. Every source path appears
// in exactly one of Matches, OneLeft, Ambiguous, or SourceOrphans.
type Result struct {
	Matches []Match

	// OneLeft are sources that started with several candidates and had all
	// but one discarded. They're reported as potentially incorrect.
	OneLeft []Match

	Ambiguous []Ambiguity

	// SourceOrphans are source paths with no counterpart in the destination.
	SourceOrphans []string

	// DestOrphans are destination paths no source resolved to.
	DestOrphans []string

	Counters Counters
}

// A Matcher drains a queue of source paths against a destination index,
// emitting matches and classifying whatever can't be matched. It owns the
// queue and the index for the duration of the run; a candidate consumed for
// an earlier source is invisible to every later source.
type Matcher struct {
	cfg    Config
	queue  []string
	index  *DestIndex
	taken  map[string]bool
	result Result

	// orphanRecs holds the source orphans in discovery order during the
	// cross-orphan sweep.
	orphanRecs []*HashRecord
	hashes     *HashIndex
}

// pending is an ambiguous source waiting for the post-loop partition. The
// entry is re-read at partition time because sources drained later may have
// consumed candidates from it.
type pending struct {
	source string
	key    string
}

// NewMatcher creates a matcher over the given source queue and destination
// index. The matcher takes ownership of both.
func NewMatcher(cfg Config, sources []string, index *DestIndex) *Matcher {
	return &Matcher{
		cfg:   cfg,
		queue: sources,
		index: index,
		taken: map[string]bool{},
	}
}

// MarkTaken records destination paths that are already claimed by a previous
// plan. They stay in the index so candidate lists keep their full shape, but
// they're never reported as destination orphans.
func (m *Matcher) MarkTaken(paths []string) {
	for _, path := range paths {
		m.taken[repo.Fold(path)] = true
	}
}

// Run drains the source queue and returns the classified result.
func (m *Matcher) Run() *Result {
	var pendings []pending
	for _, src := range m.queue {
		name := repo.Base(src)
		entry, ok := m.index.Lookup(name)
		if !ok {
			m.result.SourceOrphans = append(m.result.SourceOrphans, src)
			continue
		}

		switch entry := entry.(type) {
		case Single:
			m.emit(Match{Source: src, Dest: string(entry)})
			m.index.Remove(name)
		case Multi:
			if m.resolveMulti(src, name, entry) {
				continue
			}
			pendings = append(pendings, pending{source: src, key: name})
		}
	}
	m.queue = nil

	m.partition(pendings)
	if m.cfg.CompareContents {
		m.crossOrphanSweep()
	}
	m.result.DestOrphans = m.remainingDests()
	m.fillCounters()
	return &m.result
}

// resolveMulti tries to pick one of several candidates for src. An exact
// path match wins unconditionally; otherwise the candidates are ranked by
// path similarity and, when content comparison is enabled, compared by
// length and checksum in rank order. Returns whether a match was emitted.
func (m *Matcher) resolveMulti(src, name string, candidates Multi) bool {
	for _, candidate := range candidates {
		if repo.Equal(candidate, src) {
			m.emit(Match{Source: src, Dest: candidate})
			m.index.RemovePath(name, candidate)
			return true
		}
	}

	if !m.cfg.CompareContents {
		return false
	}

	srcPath := m.sourcePath(src)
	srcLength, err := fileLength(srcPath)
	if err != nil {
		log.WithError(err).WithField("path", src).Warn(
			"Failed to read the source file. Skipping the content comparison for it.")
		return false
	}

	// The source checksum is computed at most once, the first time a
	// candidate survives the length gate.
	srcHashed := false
	var srcSum uint32
	for _, candidate := range rankCandidates(src, candidates) {
		candidatePath := m.destPath(candidate)
		candidateLength, err := fileLength(candidatePath)
		if err != nil {
			log.WithError(err).WithField("path", candidate).Warn(
				"Failed to read a destination candidate. Skipping it.")
			continue
		}
		if candidateLength != srcLength {
			continue
		}

		if !srcHashed {
			srcSum, err = fileChecksum(srcPath)
			if err != nil {
				log.WithError(err).WithField("path", src).Warn(
					"Failed to hash the source file. Skipping the content comparison for it.")
				return false
			}
			srcHashed = true
		}

		candidateSum, err := fileChecksum(candidatePath)
		if err != nil {
			log.WithError(err).WithField("path", candidate).Warn(
				"Failed to hash a destination candidate. Skipping it.")
			continue
		}

		if candidateSum == srcSum {
			m.emit(Match{Source: src, Dest: candidate, ByHash: true})
			m.index.RemovePath(name, candidate)
			return true
		}
	}
	return false
}

// partition classifies the ambiguous list in a single pass over the live
// index. A pending source whose candidates were all consumed by later
// sources becomes a source orphan; one with a single survivor becomes a
// one-left match; the rest stay ambiguous. One-left and ambiguous entries
// consume their candidates so that later sections never repeat a path.
func (m *Matcher) partition(pendings []pending) {
	var ambiguousKeys []string
	for _, p := range pendings {
		entry, ok := m.index.Lookup(p.key)
		if !ok {
			m.result.SourceOrphans = append(m.result.SourceOrphans, p.source)
			continue
		}

		switch entry := entry.(type) {
		case Single:
			m.result.OneLeft = append(m.result.OneLeft,
				Match{Source: p.source, Dest: string(entry)})
			m.index.Remove(p.key)
		case Multi:
			if len(entry) == 1 {
				m.result.OneLeft = append(m.result.OneLeft,
					Match{Source: p.source, Dest: entry[0]})
				m.index.Remove(p.key)
				continue
			}
			m.result.Ambiguous = append(m.result.Ambiguous, Ambiguity{
				Source:     p.source,
				Candidates: append([]string(nil), entry...),
			})
			ambiguousKeys = append(ambiguousKeys, p.key)
		}
	}

	// The removal is deferred so that several sources sharing the same
	// basename all get the full candidate list.
	for _, key := range ambiguousKeys {
		m.index.Remove(key)
	}
}

// crossOrphanSweep content-matches the two orphan sets against each other:
// every source orphan is hashed into the hash index, and every destination
// orphan looks itself up by hash and length. Pairs that collide are renamed
// files.
func (m *Matcher) crossOrphanSweep() {
	destOrphans := m.remainingDests()
	if len(m.result.SourceOrphans) == 0 || len(destOrphans) == 0 {
		return
	}

	m.hashes = NewHashIndex()
	for _, src := range m.result.SourceOrphans {
		rec := &HashRecord{Path: src}
		m.orphanRecs = append(m.orphanRecs, rec)

		srcPath := m.sourcePath(src)
		length, err := fileLength(srcPath)
		if err != nil {
			log.WithError(err).WithField("path", src).Warn(
				"Failed to read a source orphan. It won't be content-matched.")
			continue
		}
		sum, err := fileChecksum(srcPath)
		if err != nil {
			log.WithError(err).WithField("path", src).Warn(
				"Failed to hash a source orphan. It won't be content-matched.")
			continue
		}

		rec.Length = length
		m.hashes.Add(sum, rec)
	}

	for _, dest := range destOrphans {
		destPath := m.destPath(dest)
		length, err := fileLength(destPath)
		if err != nil {
			log.WithError(err).WithField("path", dest).Warn(
				"Failed to read a destination orphan. It won't be content-matched.")
			continue
		}
		sum, err := fileChecksum(destPath)
		if err != nil {
			log.WithError(err).WithField("path", dest).Warn(
				"Failed to hash a destination orphan. It won't be content-matched.")
			continue
		}

		rec := m.hashes.Find(sum, length)
		if rec == nil {
			continue
		}

		m.emit(Match{Source: rec.Path, Dest: dest, ByHash: true})
		rec.Matched = true
		m.index.RemovePath(repo.Base(dest), dest)
	}

	// The source orphans are now exactly the records the sweep didn't
	// consume.
	m.result.SourceOrphans = nil
	for _, rec := range m.orphanRecs {
		if !rec.Matched {
			m.result.SourceOrphans = append(m.result.SourceOrphans, rec.Path)
		}
	}
}

func (m *Matcher) emit(match Match) {
	m.result.Matches = append(m.result.Matches, match)
	m.result.Counters.Matched++
	if match.ByHash {
		m.result.Counters.MatchedByHash++
	}
}

// remainingDests returns the candidate paths still in the index, minus the
// ones a previous plan already claimed.
func (m *Matcher) remainingDests() []string {
	var dests []string
	for _, path := range m.index.Remaining() {
		if !m.taken[repo.Fold(path)] {
			dests = append(dests, path)
		}
	}
	return dests
}

func (m *Matcher) fillCounters() {
	m.result.Counters.SourceOrphans = len(m.result.SourceOrphans)
	m.result.Counters.Ambiguous = len(m.result.Ambiguous)
	m.result.Counters.OneLeft = len(m.result.OneLeft)
	m.result.Counters.DestOrphans = len(m.result.DestOrphans)
}

func (m *Matcher) sourcePath(rel string) string {
	return filepath.Join(m.cfg.SourceRoot, repo.FromSlash(rel))
}

func (m *Matcher) destPath(rel string) string {
	return filepath.Join(m.cfg.DestRoot, repo.FromSlash(rel))
}
