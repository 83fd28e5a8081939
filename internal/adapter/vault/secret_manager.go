package vault

import (
	"fmt"

	"github.com/hashicorp/vault/api"
)

type SecretManager struct {
	client *api.Client
	path   string
}

func NewSecretManager(address, token, path string) (*SecretManager, error) {
	config := api.DefaultConfig()
	config.Address = address

	client, err := api.NewClient(config)
	if err != nil {
		return nil, err
	}

	client.SetToken(token)

	return &SecretManager{client: client, path: path}, nil
}

// GetStripeKeys reads the live and test API secrets from the KV mount.
func (sm *SecretManager) GetStripeKeys() (live string, test string, err error) {
	secret, err := sm.client.Logical().Read(sm.path)
	if err != nil {
		return "", "", err
	}
	if secret == nil || secret.Data == nil {
		return "", "", fmt.Errorf("no secret at %s", sm.path)
	}

	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return "", "", fmt.Errorf("unexpected secret shape at %s", sm.path)
	}

	live, _ = data["live_key"].(string)
	test, _ = data["test_key"].(string)
	return live, test, nil
}
