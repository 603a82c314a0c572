// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auditdb

// amounts are decimal text, sqlite integers are signed 64 bits
const stakeEventTableSchema = `
CREATE TABLE IF NOT EXISTS stake_event (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL,
	owner BLOB(20) NOT NULL,
	amount TEXT NOT NULL,
	payout TEXT NOT NULL,
	penalty TEXT NOT NULL,
	lockSeconds INTEGER NOT NULL,
	tier INTEGER NOT NULL,
	time INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS stakeEventOwnerIndex ON stake_event(owner);
CREATE INDEX IF NOT EXISTS stakeEventTimeIndex ON stake_event(time);
`
