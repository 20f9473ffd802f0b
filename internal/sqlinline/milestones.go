package sqlinline

const QInsertMilestone = `--sql 037183a8-8af5-426d-a35b-f9fdf73c5226
insert into milestones(id, campaign_id, title, description, target_amount, achieved, created_at, updated_at)
values (gen_random_uuid(), $1::uuid, $2::text, $3::text, $4::bigint, false, now(), now())
returning id;
`

const QListMilestonesByCampaign = `--sql 58e1a04a-08ec-484c-b353-f0801be135fb
select id, campaign_id, title, description, target_amount, achieved, achieved_at, created_at
from milestones
where campaign_id = $1::uuid
order by target_amount asc;
`

const QUpdateMilestone = `--sql 81016a6c-ea11-49da-a81c-7185586b02f4
update milestones
set title = $2::text, description = $3::text, target_amount = $4::bigint, updated_at = now()
where id = $1::uuid;
`

const QDeleteMilestone = `--sql 52c9b4fa-9e59-4ebc-874b-196954a55bfb
delete from milestones
where id = $1::uuid;
`

const QSelectMilestoneCampaignOwner = `--sql cd60535a-137a-4c3f-b37b-502d80f6b718
select c.owner_id
from milestones m
join campaigns c on c.id = m.campaign_id
where m.id = $1::uuid;
`

const QAchieveFundedMilestones = `--sql 32ae0c64-16e3-4648-801d-2dfd7f224e35
update milestones m
set achieved = true, achieved_at = now(), updated_at = now()
from campaigns c
where c.id = m.campaign_id and not m.achieved and c.amount_raised >= m.target_amount;
`
