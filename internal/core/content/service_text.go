// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import stdctx "context"

// UpdateTexts replaces the text block textID of the entity.
func (service *Service) UpdateTexts(context stdctx.Context, entityID, textID string, input TextInput) error {
	if err := requireIDs(map[string]string{"text_id": textID}); err != nil {
		return err
	}

	body, err := service.owned(entityID, input)
	if err != nil {
		return err
	}
	if err := service.client.Put(context, service.kind.ItemPath(ResourceTexts, textID), body, nil); err != nil {
		return service.wrap("update texts", err)
	}
	return nil
}
