package detector

// Detect возвращает идентификаторы, присутствующие в current и отсутствующие в previous.
// Порядок результата совпадает с порядком current. Исчезнувшие идентификаторы
// не учитываются: система никогда не сообщает об удалениях.
func Detect(current []string, previous map[string]struct{}) []string {
	newIDs := make([]string, 0)

	for _, id := range current {
		if _, seen := previous[id]; !seen {
			newIDs = append(newIDs, id)
		}
	}

	return newIDs
}

// IDSet переводит список идентификаторов в множество.
func IDSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))

	for _, id := range ids {
		set[id] = struct{}{}
	}

	return set
}
