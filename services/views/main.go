package viewsService

import (
	"reflect"
	"sync"

	c "casereview/api/models/constants"
	analysisType "casereview/api/models/constants/analysis-type"
	"casereview/api/models/indexes"
)

/*
	Read-only derivations over an explicit application state snapshot.
	Rather than consulting a process-wide store, every selector is a
	pure function State -> derived view, so the same snapshot always
	produces the same answer and the functions stay trivially testable.
*/

type State struct {
	Projects    []indexes.Project
	Families    []indexes.Family
	Individuals []indexes.Individual
	Outliers    []indexes.RnaSeqOutlier
}

func IndividualsByFamily(state State) map[string][]indexes.Individual {
	byFamily := make(map[string][]indexes.Individual)
	for _, individual := range state.Individuals {
		if individual.FamilyGuid == "" {
			continue
		}
		byFamily[individual.FamilyGuid] = append(byFamily[individual.FamilyGuid], individual)
	}
	return byFamily
}

func OutliersByIndividual(state State) map[string][]indexes.RnaSeqOutlier {
	byIndividual := make(map[string][]indexes.RnaSeqOutlier)
	for _, outlier := range state.Outliers {
		if outlier.IndividualGuid == "" {
			continue
		}
		byIndividual[outlier.IndividualGuid] = append(byIndividual[outlier.IndividualGuid], outlier)
	}
	return byIndividual
}

// SignificantJunctionOutliersByIndividual narrows the outlier map down to
// significant splice-junction records, the only ones the junction tables
// and variant overlap views consume.
func SignificantJunctionOutliersByIndividual(state State) map[string][]indexes.RnaSeqOutlier {
	byIndividual := make(map[string][]indexes.RnaSeqOutlier)
	for _, outlier := range state.Outliers {
		if outlier.IndividualGuid == "" {
			continue
		}
		if outlier.AnalysisType != analysisType.Splice || !outlier.IsSignificant {
			continue
		}
		byIndividual[outlier.IndividualGuid] = append(byIndividual[outlier.IndividualGuid], outlier)
	}
	return byIndividual
}

// TissueOptionsByIndividual preserves the order tissues appear in the
// loaded sample data (dedup keep-first). The tissue dropdown's default
// depends on this ordering, so it is not sorted.
func TissueOptionsByIndividual(state State) map[string][]c.TissueType {
	byIndividual := make(map[string][]c.TissueType)
	seen := make(map[string]map[c.TissueType]bool)
	for _, outlier := range state.Outliers {
		if outlier.IndividualGuid == "" || outlier.TissueType == "" {
			continue
		}
		if seen[outlier.IndividualGuid] == nil {
			seen[outlier.IndividualGuid] = make(map[c.TissueType]bool)
		}
		if seen[outlier.IndividualGuid][outlier.TissueType] {
			continue
		}
		seen[outlier.IndividualGuid][outlier.TissueType] = true
		byIndividual[outlier.IndividualGuid] = append(byIndividual[outlier.IndividualGuid], outlier.TissueType)
	}
	return byIndividual
}

// FamilyIndividualGuids resolves the individuals behind a variant's
// families - the population the outlier aggregation runs over.
func FamilyIndividualGuids(state State, familyGuids []string) []string {
	wanted := make(map[string]bool)
	for _, familyGuid := range familyGuids {
		wanted[familyGuid] = true
	}

	guids := make([]string, 0)
	for _, individual := range state.Individuals {
		if wanted[individual.FamilyGuid] {
			guids = append(guids, individual.Guid)
		}
	}
	return guids
}

// -- subscriptions

type Selector func(State) interface{}

type subscription struct {
	selector Selector
	onChange func(interface{})
	last     interface{}
	primed   bool
}

// Watcher is the explicit replacement for implicit re-render-on-store-change :
// a consumer subscribes to the derived value it needs, and is only notified
// when a state update actually changes that value.
type Watcher struct {
	mux           sync.Mutex
	subscriptions map[string]*subscription
	current       State
}

func NewWatcher() *Watcher {
	return &Watcher{
		subscriptions: map[string]*subscription{},
	}
}

func (w *Watcher) Subscribe(name string, selector Selector, onChange func(interface{})) {
	w.mux.Lock()
	defer w.mux.Unlock()

	w.subscriptions[name] = &subscription{
		selector: selector,
		onChange: onChange,
	}
}

func (w *Watcher) Unsubscribe(name string) {
	w.mux.Lock()
	defer w.mux.Unlock()

	delete(w.subscriptions, name)
}

// Update swaps in a new state snapshot and re-evaluates every
// subscription against it, invoking callbacks only for derived
// values that changed since the previous evaluation.
func (w *Watcher) Update(state State) {
	w.mux.Lock()
	defer w.mux.Unlock()

	w.current = state
	for _, sub := range w.subscriptions {
		derived := sub.selector(state)
		if sub.primed && reflect.DeepEqual(sub.last, derived) {
			continue
		}
		sub.last = derived
		sub.primed = true
		sub.onChange(derived)
	}
}

func (w *Watcher) CurrentState() State {
	w.mux.Lock()
	defer w.mux.Unlock()

	return w.current
}
